package webhook

import (
	"context"
	"encoding/json"
	"net/http"

	admissionv1 "k8s.io/api/admission/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/webhook/admission"
)

// Mutator is implemented by any type whose admission Create/Update should be mutated.
// Prototype returns the concrete runtime.Object the request body should be decoded into.
type Mutator interface {
	Prototype(req admission.Request) (runtime.Object, error)
	MutateCreate(ctx context.Context, obj runtime.Object) (runtime.Object, error)
	MutateUpdate(ctx context.Context, obj runtime.Object, oldObj runtime.Object) (runtime.Object, error)
}

// MutatingHandlerFor builds an admission.Handler that decodes the request object via
// mutator.Prototype, dispatches to the matching Mutate* method, and diffs the result
// into a JSON Patch response.
func MutatingHandlerFor(mutator Mutator, scheme *runtime.Scheme) admission.Handler {
	return &mutatingHandler{mutator: mutator, decoder: admission.NewDecoder(scheme)}
}

type mutatingHandler struct {
	mutator Mutator
	decoder admission.Decoder
}

func (h *mutatingHandler) Handle(ctx context.Context, req admission.Request) admission.Response {
	ctx = ContextWithAdmissionRequest(ctx, req)

	obj, err := h.mutator.Prototype(req)
	if err != nil {
		return admission.Errored(http.StatusBadRequest, err)
	}

	var mutatedObj runtime.Object
	switch req.Operation {
	case admissionv1.Create:
		if err := h.decoder.DecodeRaw(req.Object, obj); err != nil {
			return admission.Errored(http.StatusBadRequest, err)
		}
		mutatedObj, err = h.mutator.MutateCreate(ctx, obj)
		if err != nil {
			return admission.Denied(err.Error())
		}
	case admissionv1.Update:
		oldObj := obj.DeepCopyObject()
		if err := h.decoder.DecodeRaw(req.Object, obj); err != nil {
			return admission.Errored(http.StatusBadRequest, err)
		}
		if err := h.decoder.DecodeRaw(req.OldObject, oldObj); err != nil {
			return admission.Errored(http.StatusBadRequest, err)
		}
		mutatedObj, err = h.mutator.MutateUpdate(ctx, obj, oldObj)
		if err != nil {
			return admission.Denied(err.Error())
		}
	default:
		return admission.Allowed("")
	}

	marshalledObj, err := json.Marshal(mutatedObj)
	if err != nil {
		return admission.Errored(http.StatusInternalServerError, err)
	}
	return admission.PatchResponseFromRaw(req.Object.Raw, marshalledObj)
}
