// Package imagematch pairs card records with image files by filename alone.
// Candidates are pruned by structural hard rules (signed, base, denominator)
// and the survivors ranked by fuzzy token similarity; ties and empty
// candidate sets are first-class results, never silent picks.
package imagematch
