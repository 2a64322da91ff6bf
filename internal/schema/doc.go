// Package schema compiles graph schemas written in CUE.
//
// A schema declares vertex and edge labels with numeric ids, the declared
// property.DataType of every property, and optional primary keys. Property
// declaration order is significant: the bulk loader maps data columns to
// properties in that order.
package schema
