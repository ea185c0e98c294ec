// Package connectors holds the input sources digestpdf reads PDFs from.
// The filesystem connector discovers candidate files under a directory
// and watches it for changes.
package connectors
