// Package config loads .podsrc.yaml, applies the PODSRC_PATH override and
// validates the result for the doctor command.
package config
