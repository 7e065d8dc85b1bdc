package nodedrain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

func newScheme(t *testing.T) *runtime.Scheme {
	scheme := runtime.NewScheme()
	require.NoError(t, corev1.AddToScheme(scheme))
	return scheme
}

func TestOracle_schedulableNode(t *testing.T) {
	scheme := newScheme(t)
	node := &corev1.Node{ObjectMeta: metav1.ObjectMeta{Name: "n1"}}
	pod := &corev1.Pod{ObjectMeta: metav1.ObjectMeta{Namespace: "default", Name: "foo"}, Spec: corev1.PodSpec{NodeName: "n1"}}
	k8sClient := fake.NewClientBuilder().WithScheme(scheme).WithObjects(node).Build()
	oracle := New(k8sClient, log.Log)

	draining, err := oracle.IsOnDrainingNode(context.Background(), pod)
	require.NoError(t, err)
	assert.False(t, draining)
}

func TestOracle_unschedulableNode(t *testing.T) {
	scheme := newScheme(t)
	node := &corev1.Node{ObjectMeta: metav1.ObjectMeta{Name: "n1"}, Spec: corev1.NodeSpec{Unschedulable: true}}
	pod := &corev1.Pod{ObjectMeta: metav1.ObjectMeta{Namespace: "default", Name: "foo"}, Spec: corev1.PodSpec{NodeName: "n1"}}
	k8sClient := fake.NewClientBuilder().WithScheme(scheme).WithObjects(node).Build()
	oracle := New(k8sClient, log.Log)

	draining, err := oracle.IsOnDrainingNode(context.Background(), pod)
	require.NoError(t, err)
	assert.True(t, draining)
}

func TestOracle_taintedNode(t *testing.T) {
	scheme := newScheme(t)
	node := &corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: "n1"},
		Spec: corev1.NodeSpec{
			Taints: []corev1.Taint{{Key: unschedulableTaintKey, Effect: corev1.TaintEffectNoSchedule}},
		},
	}
	pod := &corev1.Pod{ObjectMeta: metav1.ObjectMeta{Namespace: "default", Name: "foo"}, Spec: corev1.PodSpec{NodeName: "n1"}}
	k8sClient := fake.NewClientBuilder().WithScheme(scheme).WithObjects(node).Build()
	oracle := New(k8sClient, log.Log)

	draining, err := oracle.IsOnDrainingNode(context.Background(), pod)
	require.NoError(t, err)
	assert.True(t, draining)
}

func TestOracle_nodeNotFound(t *testing.T) {
	scheme := newScheme(t)
	pod := &corev1.Pod{ObjectMeta: metav1.ObjectMeta{Namespace: "default", Name: "foo"}, Spec: corev1.PodSpec{NodeName: "gone"}}
	k8sClient := fake.NewClientBuilder().WithScheme(scheme).Build()
	oracle := New(k8sClient, log.Log)

	draining, err := oracle.IsOnDrainingNode(context.Background(), pod)
	require.NoError(t, err)
	assert.False(t, draining)
}

func TestOracle_noNodeName(t *testing.T) {
	scheme := newScheme(t)
	pod := &corev1.Pod{ObjectMeta: metav1.ObjectMeta{Namespace: "default", Name: "foo"}}
	k8sClient := fake.NewClientBuilder().WithScheme(scheme).Build()
	oracle := New(k8sClient, log.Log)

	draining, err := oracle.IsOnDrainingNode(context.Background(), pod)
	require.NoError(t, err)
	assert.False(t, draining)
}
