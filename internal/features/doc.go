// Package features maps user-facing form fields onto the fixed-order numeric
// vectors that trained classifiers expect.
//
// A Schema lists its fields twice: Fields is the display order used by the
// form renderer, Order is the training order of the model. Encode always walks
// Order, so regrouping fields on the page never changes the vector.
package features
