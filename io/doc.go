// Package io provides the devices around the LS-8 core: the program image
// (Rom) in its binary-literal text form, and the printer (Tape) that
// receives PRN output.
package io
