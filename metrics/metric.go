package metrics

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"sync"

	vm "github.com/VictoriaMetrics/metrics"
)

// Namespace is prepended to all metric names.
const Namespace = "portrand"

const (
	prometheusBaseFormt  = "[a-zA-Z_][a-zA-Z0-9_]*"
	prometheusLabelValue = "[^\"\\\\\n]*"
)

var (
	prometheusFormat      = regexp.MustCompile("^" + prometheusBaseFormt + "$")
	prometheusLabelFormat = regexp.MustCompile("^" + prometheusLabelValue + "$")

	metricsSet   = vm.NewSet()
	registry     = make(map[string]Metric)
	registryLock sync.RWMutex

	// ErrInvalidID is returned when a metric ID or label is invalid.
	ErrInvalidID = errors.New("invalid metric ID or label")
	// ErrAlreadyRegistered is returned when a metric with the same labeled ID
	// was already registered with a different type.
	ErrAlreadyRegistered = errors.New("metric already registered")
)

// Metric represents one or more metrics.
type Metric interface {
	ID() string
	LabeledID() string
	Opts() *Options
}

// Options can be used to set advanced metric settings.
type Options struct {
	// Name defines an optional human readable name for the metric.
	Name string
}

type metricBase struct {
	Identifier        string
	Labels            map[string]string
	LabeledIdentifier string
	Options           *Options
}

func newMetricBase(id string, labels map[string]string, opts Options) (*metricBase, error) {
	// Check formats.
	promName := Namespace + "_" + strings.ReplaceAll(id, "/", "_")
	if !prometheusFormat.MatchString(promName) {
		return nil, fmt.Errorf("%w: metric name %q", ErrInvalidID, id)
	}
	for labelName, labelValue := range labels {
		if !prometheusFormat.MatchString(labelName) {
			return nil, fmt.Errorf("%w: label name %q", ErrInvalidID, labelName)
		}
		if !prometheusLabelFormat.MatchString(labelValue) {
			return nil, fmt.Errorf("%w: value %q of label %q", ErrInvalidID, labelValue, labelName)
		}
	}

	return &metricBase{
		Identifier:        id,
		Labels:            labels,
		LabeledIdentifier: buildLabeledID(promName, labels),
		Options:           &opts,
	}, nil
}

// ID returns the given ID of the metric.
func (m *metricBase) ID() string {
	return m.Identifier
}

// LabeledID returns the Prometheus-compatible labeled ID of the metric.
func (m *metricBase) LabeledID() string {
	return m.LabeledIdentifier
}

// Opts returns the metric options.
func (m *metricBase) Opts() *Options {
	return m.Options
}

func buildLabeledID(promName string, labels map[string]string) string {
	if len(labels) == 0 {
		return promName
	}

	// Sort labels for a stable ID.
	labelNames := make([]string, 0, len(labels))
	for labelName := range labels {
		labelNames = append(labelNames, labelName)
	}
	sort.Strings(labelNames)

	var b strings.Builder
	b.WriteString(promName)
	b.WriteString("{")
	for i, labelName := range labelNames {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "%s=%q", labelName, labels[labelName])
	}
	b.WriteString("}")
	return b.String()
}

// register adds the metric to the registry and calls create while still
// holding the registry lock, so that a returned metric is always complete.
func register(m Metric, create func()) (Metric, error) {
	registryLock.Lock()
	defer registryLock.Unlock()

	if existing, ok := registry[m.LabeledID()]; ok {
		return existing, ErrAlreadyRegistered
	}
	create()
	registry[m.LabeledID()] = m
	return m, nil
}

// WritePrometheus writes all registered metrics in the Prometheus text format.
// Process metrics of the Go runtime are included if exposeProcessMetrics is set.
func WritePrometheus(w io.Writer, exposeProcessMetrics bool) {
	metricsSet.WritePrometheus(w)
	if exposeProcessMetrics {
		vm.WriteProcessMetrics(w)
	}
}

// Registered returns the labeled IDs of all registered metrics, sorted.
func Registered() []string {
	registryLock.RLock()
	defer registryLock.RUnlock()

	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
