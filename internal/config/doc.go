// Package config provides configuration loading for the route matching
// engine.
//
// A routes file is YAML. Environment variables are substituted before
// parsing using ${VAR} or ${VAR:-default}; "$$" yields a literal "$".
//
//	defaultPattern: "[^/]+"
//	eagerCompile: true
//	logging:
//	  level: info
//	  format: json
//	tracing:
//	  enabled: false
//	routes:
//	  - name: user.show
//	    path: /users/{id:\d+}
//	    methods: [GET]
//	    defaults:
//	      controller: users
//	      action: show
//
// The routes section may also be a mapping from route name to route.
// Integer and null keys register anonymous routes; other key types are
// passed through and rejected at registration.
//
// A Watcher reloads the file on change and hands every valid
// configuration to a callback, keeping the last good one on failure.
package config
