package mesh

import (
	"go.uber.org/zap"
)

// Option configures a conversion
type Option func(*options)

type options struct {
	midside bool
	log     *zap.Logger
}

func gatherOptions(opts ...Option) (o options) {
	o = options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return
}

// WithMidsideNodes emits every node of a connectivity record (6 per triangle,
// 8 per quad) instead of the corner nodes only
func WithMidsideNodes(midside bool) Option {
	return func(o *options) { o.midside = midside }
}

// WithLogger sends conversion progress to log at debug level. A nil logger
// leaves logging off.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}
