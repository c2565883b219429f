// Package filter holds the value types a selection is turned into: equality
// conditions against a table column, and batches of conditions that form one
// complete predicate.
//
// Conditions and batches are immutable once built. A batch renders itself as
// a human-readable predicate (String), as a squirrel Sqlizer (ToSql), and can
// be evaluated in memory against a record (Match).
//
// Within a batch each row of the selection is one group: the group's first
// condition opens a parenthesis and is joined to what precedes it with OR, the
// remaining conditions of the group are joined with AND and the last one closes
// the parenthesis.
package filter
