package config

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// schemaSource constrains a decoded configuration.
const schemaSource = `
#Config: {
	coercion: [=~"^(logical|integer|double|complex|character|raw)$"]: string & !=""
	store: {
		driver: "sqlite" | "duckdb"
		dsn:    string & !=""
	}
	server: addr: string & !=""
	log: {
		verbosity: int & >=-4 & <=2
		file?:     string
	}
}
`

// Validate checks c against the configuration schema.
func Validate(c *Config) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("config: schema: %w", err)
	}

	v := schema.Unify(ctx.Encode(c))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}
