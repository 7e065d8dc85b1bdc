package webhook

import (
	"context"
	"net/http"

	admissionv1 "k8s.io/api/admission/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/webhook/admission"
)

// Validator is implemented by any type whose admission Create/Update/Delete should
// be validated. Prototype returns the concrete runtime.Object the request body should
// be decoded into.
type Validator interface {
	Prototype(req admission.Request) (runtime.Object, error)
	ValidateCreate(ctx context.Context, obj runtime.Object) error
	ValidateUpdate(ctx context.Context, obj runtime.Object, oldObj runtime.Object) error
	ValidateDelete(ctx context.Context, obj runtime.Object) error
}

// ValidatingHandlerFor builds an admission.Handler that decodes the request object via
// validator.Prototype and dispatches to the matching Validate* method.
func ValidatingHandlerFor(validator Validator, scheme *runtime.Scheme) admission.Handler {
	return &validatingHandler{validator: validator, decoder: admission.NewDecoder(scheme)}
}

type validatingHandler struct {
	validator Validator
	decoder   admission.Decoder
}

func (h *validatingHandler) Handle(ctx context.Context, req admission.Request) admission.Response {
	ctx = ContextWithAdmissionRequest(ctx, req)

	obj, err := h.validator.Prototype(req)
	if err != nil {
		return admission.Errored(http.StatusBadRequest, err)
	}

	switch req.Operation {
	case admissionv1.Create:
		if err := h.decoder.DecodeRaw(req.Object, obj); err != nil {
			return admission.Errored(http.StatusBadRequest, err)
		}
		if err := h.validator.ValidateCreate(ctx, obj); err != nil {
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
		if err := h.validator.ValidateUpdate(ctx, obj, oldObj); err != nil {
			return admission.Denied(err.Error())
		}
	case admissionv1.Delete:
		if err := h.decoder.DecodeRaw(req.OldObject, obj); err != nil {
			return admission.Errored(http.StatusBadRequest, err)
		}
		if err := h.validator.ValidateDelete(ctx, obj); err != nil {
			return admission.Denied(err.Error())
		}
	default:
		return admission.Allowed("")
	}

	return admission.Allowed("")
}
