// Package model defines the stage description shared by the pipeline driver
// and its options, and the hooks an option receives while the pipeline runs.
package model
