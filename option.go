// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partition

import "github.com/rs/zerolog"

// Option configures a partition.
type Option func(*options)

type options struct {
	logger zerolog.Logger
}

func defaultOptions() options {
	return options{logger: zerolog.Nop()}
}

// WithLogger sets the logger used for partition lifecycle events:
// backpressure stalls, side closes, end of stream and source failures.
// The default logger discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}
