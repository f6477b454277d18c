// Package token defines the lexical vocabulary for the JavaScript subset the
// transformer understands: token kinds, reserved words, and leading trivia.
package token
