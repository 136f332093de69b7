// Package parser reads locker sheets out of xlsx workbooks.
package parser

// EMUPerInch is the number of EMUs (English Metric Units) in one inch.
const EMUPerInch = 914400
