// Package ctxkeys names the fiber locals shared between middlewares and handlers.
package ctxkeys

const (
	ViewerIDKey  = "viewerID"
	ParentCtxKey = "parentCtx"
)
