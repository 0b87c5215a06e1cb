package config

// DefaultAddress is the listen address used by host mode.
const DefaultAddress = ":7654"

// NetworkConfig holds settings for playing over the network.
type NetworkConfig struct {
	// Address is the listen address (host) or the host to dial (join)
	Address string

	// Name is announced to the opponent; empty picks a random one
	Name string
}

// NewNetworkConfig creates a NetworkConfig with default values.
func NewNetworkConfig() *NetworkConfig {
	return &NetworkConfig{
		Address: DefaultAddress,
	}
}
