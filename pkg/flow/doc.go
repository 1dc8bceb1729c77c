// Package flow provides per-execution-flow slot storage.
//
// A flow is one logical unit of concurrent work: one incoming HTTP
// request, one queue message, one worker task. The surrounding harness
// opens a flow at the start of the unit and threads it through the
// call chain inside a context.Context:
//
//	ctx = flow.NewContext(r.Context())
//
// Code anywhere below can then read and write the flow's slots without
// new function parameters:
//
//	f, ok := flow.From(ctx)
//	f.Put(flow.IdentityKey, id)
//
// Slots are mutable after the context has been handed out, which is
// what distinguishes a flow from a raw context value: authenticating
// halfway through a request makes the identity visible to code that
// was given the context earlier. Isolation between concurrent flows
// comes from each unit of work getting its own Flow; nothing in this
// package is process-global.
package flow
