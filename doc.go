// Package astree parses infix math expressions into abstract syntax trees and
// evaluates them over float64.
//
// Parsing runs in three stages that can be used separately: Tokenize classifies
// the text, ToPostfix reorders tokens by precedence with a shunting-yard pass,
// and Build assembles the postfix symbols into a tree. Parse does all three.
// "-2^2" is "-(2^2)", "2^3^2" is "2^(3^2)", and functions bind to their
// argument list or a bare operand: "sin x^2" is "(sin x)^2". Binary functions
// take comma separated arguments, as in "log(8, 2)".
//
// A parsed AST is never modified by evaluation or traversal, so it can be
// evaluated any number of times with different variable bindings, including
// concurrently. Special constants like pi and e are resolved when evaluating.
package astree
