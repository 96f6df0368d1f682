package project

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Well-known replacement keys. Templates reference them as $KEY or {KEY}.
const (
	KeyProjectName     = "KAVIA_TEMPLATE_PROJECT_NAME"
	KeyDescription     = "KAVIA_PROJECT_DESCRIPTION"
	KeyAuthor          = "KAVIA_PROJECT_AUTHOR"
	KeyVersion         = "KAVIA_PROJECT_VERSION"
	KeyUseTypeScript   = "KAVIA_USE_TYPESCRIPT"
	KeyStylingSolution = "KAVIA_STYLING_SOLUTION"
	KeyDirectory       = "KAVIA_PROJECT_DIRECTORY"
	KeyDBName          = "KAVIA_DB_NAME"
	KeyDBUser          = "KAVIA_DB_USER"
	KeyDBPassword      = "KAVIA_DB_PASSWORD"
	KeyDBPort          = "KAVIA_DB_PORT"
)

// Parameter names read by Replacements.
const (
	ParamTypeScript       = "typescript"
	ParamStylingSolution  = "styling_solution"
	ParamDatabaseName     = "database_name"
	ParamDatabaseUser     = "database_user"
	ParamDatabasePassword = "database_password"
	ParamDatabasePort     = "database_port"
)

// DefaultStylingSolution is used when no styling_solution parameter is given.
const DefaultStylingSolution = "css"

type databaseDefault struct {
	user     string
	password string
	port     string
	// fileBased engines have no server: credentials and port stay empty and
	// the database name is a file name.
	fileBased bool
}

var databaseDefaults = map[Type]databaseDefault{
	TypePostgreSQL: {user: "dbuser", password: "dbpass", port: "5432"},
	TypeMySQL:      {user: "root", password: "dbpass", port: "3306"},
	TypeMongoDB:    {user: "dbuser", password: "dbpass", port: "27017"},
	TypeSQLite:     {fileBased: true},
}

// Replacements builds the substitution map for the config as it is right now.
// It is recomputed on every call so parameter defaults injected after
// construction are always visible.
func (c *Config) Replacements() map[string]string {
	r := map[string]string{
		KeyProjectName:     c.Name,
		KeyDescription:     c.Description,
		KeyAuthor:          c.Author,
		KeyVersion:         c.Version,
		KeyUseTypeScript:   "false",
		KeyStylingSolution: DefaultStylingSolution,
		KeyDirectory:       absPath(c.OutputPath),
	}

	if v, ok := c.Param(ParamTypeScript); ok {
		r[KeyUseTypeScript] = strings.ToLower(FormatValue(v))
	}
	if v, ok := c.Param(ParamStylingSolution); ok {
		r[KeyStylingSolution] = FormatValue(v)
	}

	for k, v := range c.databaseReplacements() {
		r[k] = v
	}
	return r
}

func (c *Config) databaseReplacements() map[string]string {
	r := map[string]string{
		KeyDBName:     "",
		KeyDBUser:     "",
		KeyDBPassword: "",
		KeyDBPort:     "",
	}

	if def, ok := databaseDefaults[c.Type]; ok {
		name := Slug(c.Name)
		if def.fileBased {
			name += ".db"
		}
		r[KeyDBName] = name
		r[KeyDBUser] = def.user
		r[KeyDBPassword] = def.password
		r[KeyDBPort] = def.port
	}

	overrides := map[string]string{
		ParamDatabaseName:     KeyDBName,
		ParamDatabaseUser:     KeyDBUser,
		ParamDatabasePassword: KeyDBPassword,
		ParamDatabasePort:     KeyDBPort,
	}
	for param, key := range overrides {
		if v, ok := c.Param(param); ok {
			r[key] = FormatValue(v)
		}
	}
	return r
}

func absPath(p string) string {
	if p == "" {
		return ""
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}

var stripMarks = runes.Remove(runes.In(unicode.Mn))

// Slug turns a project name into an identifier safe for database names:
// accents are folded, letters lowercased and every other run of characters
// collapsed to a single underscore.
func Slug(name string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, stripMarks, norm.NFC), name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	pendingSep := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}
