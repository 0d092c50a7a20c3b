package generation

import "go.uber.org/fx"

// FXModule wires the generation client into Fx.
//
// It provides:
//   - *Config  (NewConfig)
//   - *Client  (NewClient)
//
// The client holds no connections of its own, so no lifecycle hook is
// needed.
var FXModule = fx.Module(
	"generation",

	fx.Provide(
		NewConfig, // -> *Config
		NewClient, // -> *Client
	),
)
