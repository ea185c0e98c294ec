// Package normalisers turns source documents into plain text for the
// summary pipeline. The pdf normaliser extracts page text, decrypting
// documents that open with an empty user password.
package normalisers
