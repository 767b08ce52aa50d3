// Package config defines the format-agnostic description model for a
// layered network: the ordered layer declarations, their named bottom/top
// connections, and the phase/stage/level rules that decide which layers a
// given execution state instantiates.
//
// The config.NetDescription is the single source of truth for the net
// builder. Concrete loaders, such as the HCL one, live in separate packages.
package config
