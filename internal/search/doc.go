// Package search finds the candidate image most similar to a query image.
//
// Both the query and every candidate are downscaled to a small shape derived
// from the query's aspect ratio, then compared pixel by pixel using the mean
// squared error. The scan is linear and stops early once a candidate scores
// below a threshold. All functions are pure and keep no state between calls.
package search
