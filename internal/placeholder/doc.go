// Package placeholder synthesizes stand-in images for documentation slots
// that do not have real results yet.
//
// A static placeholder is a bordered canvas with centred text and a
// watermark near the bottom edge. An animated placeholder cycles through a
// small palette of background tints, one frame each, with a "Frame i/N"
// line under the text, and loops forever.
//
// Text uses a preferred scalable font when one can be loaded and the built-in
// bitmap face otherwise. Falling back is not an error; the Result reports it.
package placeholder
