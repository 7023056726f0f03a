// Package env handles environment variables and variable substitution.
//
// It provides functionality for:
//   - Loading environment files (Postman exports, flat JSON maps, .env)
//   - Variable substitution using {{variable}} syntax
//   - Postman dynamic variables ($guid, $timestamp, $randomInt)
//   - Header set normalization with per-value substitution
package env
