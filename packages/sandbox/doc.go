// Package sandbox evaluates assertion scripts in an isolated runtime.
//
// Scripts record assertions with the Postman idiom
//
//	tests['name'] = booleanExpression;
//
// against a fixed set of injected bindings (tests, responseCode,
// responseBody, responseTime). Evaluation carries a hard deadline enforced
// through the engine's interrupt mechanism; a script failure of any kind
// collapses into a single failing "Script Execution" result.
package sandbox
