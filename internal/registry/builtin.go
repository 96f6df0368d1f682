package registry

import "github.com/uniinit-labs/uniinit/internal/project"

var frontendRequired = []string{project.ParamTypeScript, project.ParamStylingSolution}

var astroAllowed = []string{
	project.ParamTypeScript,
	"integration_tailwind",
	"integration_react",
	"integration_vue",
	"integration_svelte",
}

// Families whose templates ship no meaningful dot-files.
var noHidden = map[project.Type]bool{
	project.TypeAngular:    true,
	project.TypeReact:      true,
	project.TypeRemotion:   true,
	project.TypeTypeScript: true,
	project.TypeVite:       true,
	project.TypeVue:        true,
}

// Builtin returns a policy for every supported project type.
func Builtin() []Policy {
	types := project.Types()
	policies := make([]Policy, 0, len(types))
	for _, t := range types {
		p := Policy{
			Type:          t,
			Dir:           string(t),
			IncludeHidden: !noHidden[t],
		}

		switch t {
		case project.TypeReact, project.TypeRemix:
			p.Required = frontendRequired
			p.TestSetup = true
		case project.TypeNextJS:
			p.Defaults = map[string]any{
				project.ParamTypeScript:      true,
				project.ParamStylingSolution: project.DefaultStylingSolution,
			}
		case project.TypeAstro:
			p.Allowed = astroAllowed
		}

		policies = append(policies, p)
	}
	return policies
}
