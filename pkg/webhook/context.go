package webhook

import (
	"context"

	"sigs.k8s.io/controller-runtime/pkg/webhook/admission"
)

type contextKey int

const contextKeyAdmissionRequest contextKey = iota

// ContextWithAdmissionRequest returns a new context with the given admission.Request attached.
func ContextWithAdmissionRequest(ctx context.Context, req admission.Request) context.Context {
	return context.WithValue(ctx, contextKeyAdmissionRequest, req)
}

// ContextGetAdmissionRequest extracts the admission.Request previously attached via
// ContextWithAdmissionRequest. Returns nil if none is present.
func ContextGetAdmissionRequest(ctx context.Context) *admission.Request {
	req, ok := ctx.Value(contextKeyAdmissionRequest).(admission.Request)
	if !ok {
		return nil
	}
	return &req
}
