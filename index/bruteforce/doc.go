// Package bruteforce provides an exact ranker that answers top-k queries by
// scanning all embedding rows and scoring via cosine similarity. A bounded
// binary heap keeps selection at O(N log k).
package bruteforce
