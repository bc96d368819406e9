// Package catalog maps clip names to speech clips using a YAML manifest.
//
// A manifest looks like:
//
//	clips:
//	  - name: greet_hello
//	    asset: liz/greet_hello
//	    animation: talk
//	    duration: 1.8s
//
// The asset defaults to the name. Duration is optional and only used by
// audio targets that cannot measure clips themselves.
package catalog
