// Package config loads the YAML page description used by the visdemo
// command: viewport size, root margin, thresholds, scroll behavior, and the
// regions to observe (explicit, or generated as a vertical stack of cards).
//
// Configuration is discovered in this order: an explicit path, then
// .visibility.yaml in the working directory, then
// $XDG_CONFIG_HOME/visibility/config.yaml.
package config
