// Package engine binds a vecset host to the modernc.org/sqlite driver:
// opening connections and registering every native as a SQL scalar
// function. It keeps a thin surface so the vec and vecadmin virtual tables
// share the same driver instance.
package engine
