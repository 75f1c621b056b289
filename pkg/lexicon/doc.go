/*
Package lexicon holds the static word catalogs of the engine and the heuristics
that pick words out of user text.

The default catalog is embedded as YAML; Load accepts a YAML or JSON override with
the same shape. Noun "extraction" is a membership test against a closed vocabulary,
and entity detection only looks at capitalization. False positives and negatives
are expected.
*/
package lexicon
