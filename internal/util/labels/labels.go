package labels

import (
	"strconv"
	"strings"
)

// Prefix is shared by every label key mkserver manages.
const Prefix = "mkserver.io/"

// Label keys set on every server mkserver creates.
const (
	// KeyGroup is the base name of the instance group
	KeyGroup = "mkserver.io/group"

	// KeyIndex is the 1-based index of the server within its group
	KeyIndex = "mkserver.io/index"

	// KeyRunID identifies the batch run that created the server
	KeyRunID = "mkserver.io/run-id"

	// KeyManagedBy identifies the management system
	KeyManagedBy = "mkserver.io/managed-by"
)

// ManagedByMkserver is the value of KeyManagedBy.
const ManagedByMkserver = "mkserver"

// LabelBuilder provides a fluent interface for building server labels.
type LabelBuilder struct {
	labels map[string]string
}

// NewLabelBuilder creates a builder with the group and manager labels set.
func NewLabelBuilder(group string) *LabelBuilder {
	return &LabelBuilder{
		labels: map[string]string{
			KeyGroup:     group,
			KeyManagedBy: ManagedByMkserver,
		},
	}
}

// WithIndex sets the group index label.
func (lb *LabelBuilder) WithIndex(i int) *LabelBuilder {
	lb.labels[KeyIndex] = strconv.Itoa(i)
	return lb
}

// WithRunID sets the run label. Empty IDs are skipped.
func (lb *LabelBuilder) WithRunID(id string) *LabelBuilder {
	if id != "" {
		lb.labels[KeyRunID] = id
	}
	return lb
}

// Merge adds the labels from the provided map. Keys under Prefix are
// skipped so managed labels cannot be overridden.
func (lb *LabelBuilder) Merge(extra map[string]string) *LabelBuilder {
	for k, v := range extra {
		if IsReserved(k) {
			continue
		}
		lb.labels[k] = v
	}
	return lb
}

// IsReserved reports whether key is a label mkserver manages.
func IsReserved(key string) bool {
	return strings.HasPrefix(key, Prefix)
}

// Build returns a copy of the labels map.
func (lb *LabelBuilder) Build() map[string]string {
	result := make(map[string]string, len(lb.labels))
	for k, v := range lb.labels {
		result[k] = v
	}
	return result
}
