// Package filter provides the pixel kernels used by silhouette extraction and
// contour tracing.
//
// This package contains:
//   - Luminance conversion (ITU-R BT.601 weights)
//   - Binary morphology: dilate, erode and closing (separable max-pooling)
//   - Gradient magnitude (central differences, one-sided at borders)
//
// Every kernel takes a parallel.Executor. A nil executor runs serially; a
// worker pool splits the work into row bands. Results are identical either
// way since each output row depends only on the input.
package filter
