// Package core defines the shared value types of the convokit orchestration
// core: conversation turn records, the tagged turn state, intent decisions
// and tool invocation outcomes. It is dependency-light by design so every
// other package can import it without cycles.
package core
