// Package podstate holds pure functions that read isolation and deletion
// deadline state off a pod's labels/annotations. It supersedes the inline
// label/annotation checks pod-graceful-drain's deleter used to do directly
// against *corev1.Pod, so the rest of the engine can reason about pod state
// without touching the API client.
package podstate

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	corev1 "k8s.io/api/core/v1"

	"sigs.k8s.io/pod-graceful-drain/pkg/k8s"
)

const (
	sentinelPrefix = "pod-graceful-drain"

	// WaitLabelKey marks a pod as participating in the drain protocol.
	// "true" means actively delayed; "" means isolated but delete is underway;
	// absent means not isolated.
	WaitLabelKey = sentinelPrefix + "/wait"

	// DeleteAtAnnotationKey holds the RFC3339 UTC instant at which the pod
	// should be deleted.
	DeleteAtAnnotationKey = sentinelPrefix + "/deleteAt"

	// OriginalLabelsAnnotationKey holds the JSON-encoded label map captured
	// at the moment of isolation.
	OriginalLabelsAnnotationKey = sentinelPrefix + "/originalLabels"
)

// MalformedError reports a pod that claims to be waiting but whose deleteAt
// annotation is absent or unparsable.
type MalformedError struct {
	cause error
}

func (e *MalformedError) Error() string {
	return errors.Wrap(e.cause, "malformed pod-graceful-drain state").Error()
}

func (e *MalformedError) Unwrap() error {
	return e.cause
}

// PodDeletionDelayInfo is derived from a pod's sentinel label/annotations.
type PodDeletionDelayInfo struct {
	Isolated    bool
	Waiting     bool
	DeleteAtUtc time.Time
}

// Remaining returns the time left until DeleteAtUtc, clamped to zero. It is
// only meaningful when Waiting is true.
func (i PodDeletionDelayInfo) Remaining(now time.Time) time.Duration {
	if !i.Waiting {
		return 0
	}
	if d := i.DeleteAtUtc.Sub(now); d > 0 {
		return d
	}
	return 0
}

// IsReady reports whether the pod's Ready condition is True and every
// declared readiness gate also has a matching condition of status True.
// Missing conditions count as not ready.
func IsReady(pod *corev1.Pod) bool {
	if !conditionTrue(pod, corev1.PodReady) {
		return false
	}
	for _, gate := range pod.Spec.ReadinessGates {
		if !conditionTrue(pod, gate.ConditionType) {
			return false
		}
	}
	return true
}

func conditionTrue(pod *corev1.Pod, conditionType corev1.PodConditionType) bool {
	cond := k8s.GetPodCondition(pod, conditionType)
	return cond != nil && cond.Status == corev1.ConditionTrue
}

// GetDelayInfo reads isolation/deletion state off the pod. It returns a
// *MalformedError when the wait label is present with a nonempty value but
// the deleteAt annotation is missing or not RFC3339.
func GetDelayInfo(pod *corev1.Pod) (PodDeletionDelayInfo, error) {
	waitValue, hasWaitLabel := pod.Labels[WaitLabelKey]
	_, hasDeleteAt := pod.Annotations[DeleteAtAnnotationKey]
	isolated := hasWaitLabel || hasDeleteAt

	if !isolated {
		return PodDeletionDelayInfo{}, nil
	}

	waiting := hasWaitLabel && len(waitValue) > 0
	if !waiting {
		return PodDeletionDelayInfo{Isolated: isolated, Waiting: false}, nil
	}

	deleteAt, err := getDeleteAtAnnotation(pod)
	if err != nil {
		return PodDeletionDelayInfo{}, &MalformedError{cause: err}
	}

	return PodDeletionDelayInfo{
		Isolated:    isolated,
		Waiting:     true,
		DeleteAtUtc: deleteAt,
	}, nil
}

func getDeleteAtAnnotation(pod *corev1.Pod) (time.Time, error) {
	value, ok := pod.Annotations[DeleteAtAnnotationKey]
	if !ok {
		return time.Time{}, errors.New("deleteAt annotation is missing")
	}
	deleteAt, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "deleteAt annotation is not RFC3339")
	}
	return deleteAt.UTC(), nil
}

// OriginalLabels decodes the JSON-object-encoded label snapshot saved at
// isolation time.
func OriginalLabels(pod *corev1.Pod) (map[string]string, error) {
	raw, ok := pod.Annotations[OriginalLabelsAnnotationKey]
	if !ok {
		return nil, errors.New("originalLabels annotation is missing")
	}
	var labels map[string]string
	if err := json.Unmarshal([]byte(raw), &labels); err != nil {
		return nil, errors.Wrap(err, "originalLabels annotation is not valid JSON")
	}
	return labels, nil
}
