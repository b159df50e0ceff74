package config

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

var (
	optionsLock sync.RWMutex
	options     = make(map[string]*Option)
)

// ForEachOption calls fn for each defined option. If fn returns
// and error the iteration is stopped and the error is returned.
// Note that ForEachOption does not guarantee a stable order of
// iteration between multiple calles. ForEachOption does NOT lock
// opt when calling fn.
func ForEachOption(fn func(opt *Option) error) error {
	optionsLock.RLock()
	defer optionsLock.RUnlock()

	for _, opt := range options {
		if err := fn(opt); err != nil {
			return err
		}
	}
	return nil
}

// ExportOptions exports the registered options. The returned data must be
// treated as immutable.
// The data does not include the current active or default settings.
func ExportOptions() []*Option {
	optionsLock.RLock()
	defer optionsLock.RUnlock()

	// Copy the map into a slice.
	opts := make(sortByKey, 0, len(options))
	for _, opt := range options {
		opts = append(opts, opt)
	}

	sort.Sort(opts)
	return opts
}

// GetOption returns the option with name or an error
// if the option does not exist. The caller should lock
// the returned option itself for further processing.
func GetOption(key string) (*Option, error) {
	optionsLock.RLock()
	defer optionsLock.RUnlock()

	opt, ok := options[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOption, key)
	}
	return opt, nil
}

// Register registers a new configuration option.
func Register(option *Option) error {
	if option.Name == "" {
		return newInvalidOptionError("missing name", nil)
	}
	if option.Key == "" {
		return newInvalidOptionError("missing key", nil)
	}
	if option.Description == "" {
		return newInvalidOptionError("missing description", nil)
	}
	if option.OptType == 0 {
		return newInvalidOptionError("missing type", nil)
	}
	if option.OptType > OptTypeBool {
		return newInvalidOptionError(fmt.Sprintf("option type %d", option.OptType), ErrUnsupportedType)
	}
	if strings.HasPrefix(option.Key, "/") || strings.HasSuffix(option.Key, "/") {
		return newInvalidOptionError("key must not start or end with a slash", nil)
	}

	var err error
	if option.ValidationRegex != "" {
		option.compiledRegex, err = regexp.Compile(option.ValidationRegex)
		if err != nil {
			return newInvalidOptionError("could not compile validation regex", err)
		}
	}

	option.activeFallbackValue, err = validateValue(option, option.DefaultValue)
	if err != nil {
		return newInvalidOptionError("default value does not pass validation", err)
	}

	optionsLock.Lock()
	defer optionsLock.Unlock()

	if _, ok := options[option.Key]; ok {
		return newInvalidOptionError("duplicate key "+option.Key, ErrDuplicateOption)
	}
	options[option.Key] = option

	signalChanges()

	return nil
}
