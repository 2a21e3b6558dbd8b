// Package peak tracks the maximum magnitude over a sliding window.
//
// [Window] keeps a magnitude ring aligned 1:1 with a [delay.Ring] of the same
// capacity, plus a monotonic deque of candidate maxima. Push and Peak are
// O(1) amortized and never allocate.
package peak
