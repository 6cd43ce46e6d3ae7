// Package annotation walks the declared fields and methods of a class and
// collects data from the tags attached to each member.
//
// A Collector runs two passes over a class, fields first and methods second.
// For every member it calls the per-member hook, then the per-tag hook for each
// tag on that member. A tag hook that reports ok appends its value to the
// result list of its axis; result lists only ever grow, in traversal order, and
// keep growing across repeated Collect calls.
//
// Traversal is stopped cooperatively with three flags. SetFinished stops both
// passes, SetFieldsFinished and SetMethodsFinished stop one axis. The flags are
// checked before each member and before each tag, so a hook can set one and
// the engine halts at the next check point.
//
// FieldCollector and MethodCollector narrow the engine to a single axis.
//
// Class metadata comes from a Provider. ReflectProvider reads Go types through
// reflection (struct tags for fields, a MethodTagger table for methods); Table
// serves classes described in a YAML or JSON document.
package annotation
