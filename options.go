package titulus

import (
	"github.com/tsawler/titulus/layout"
	"github.com/tsawler/titulus/resolver"
)

// genOptions holds configuration for label generation.
type genOptions struct {
	// Layout selection: explicit preset wins over the registered name.
	presetName string
	preset     *layout.Preset

	// Column resolution overrides, applied in order.
	resolverOpts []resolver.Option

	// Progress reporting
	onProgress func(done, total int)
}

// defaultOptions returns the default generation options.
func defaultOptions() genOptions {
	return genOptions{
		presetName: layout.PresetStandard,
	}
}

// clone creates a deep copy of genOptions.
func (o genOptions) clone() genOptions {
	newOpts := genOptions{
		presetName: o.presetName,
		preset:     o.preset,
		onProgress: o.onProgress,
	}

	// Deep copy resolver option slice
	if o.resolverOpts != nil {
		newOpts.resolverOpts = make([]resolver.Option, len(o.resolverOpts))
		copy(newOpts.resolverOpts, o.resolverOpts)
	}

	return newOpts
}
