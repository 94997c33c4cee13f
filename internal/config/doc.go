// Package config provides configuration parsing for uishka.
//
// The configuration is stored in uishka.json at the project root. Every field
// is optional; missing values fall back to the defaults returned by New.
//
// # Configuration File Structure
//
//	{
//	  "prefix": "uishka",
//	  "button": { "loadingLabel": "Loading..." },
//	  "log": { "level": "info", "format": "text" },
//	  "metrics": { "enabled": true, "namespace": "uishka" },
//	  "tracing": { "enabled": false, "tracerName": "uishka" },
//	  "inspect": { "host": "localhost", "port": 7070 }
//	}
package config
