package project

import (
	"fmt"
	"slices"
	"strings"
)

// Type identifies a template family.
type Type string

const (
	TypeAndroid      Type = "android"
	TypeAngular      Type = "angular"
	TypeAstro        Type = "astro"
	TypeDjango       Type = "django"
	TypeDotnet       Type = "dotnet"
	TypeExpress      Type = "express"
	TypeFastAPI      Type = "fastapi"
	TypeFlask        Type = "flask"
	TypeFlutter      Type = "flutter"
	TypeIOS          Type = "ios"
	TypeKotlin       Type = "kotlin"
	TypeLightningJS  Type = "lightningjs"
	TypeNativeScript Type = "nativescript"
	TypeNextJS       Type = "nextjs"
	TypeNode         Type = "node"
	TypeNuxt         Type = "nuxt"
	TypePython       Type = "python"
	TypeQwik         Type = "qwik"
	TypeReact        Type = "react"
	TypeReactNative  Type = "reactnative"
	TypeRemix        Type = "remix"
	TypeRemotion     Type = "remotion"
	TypeSlidev       Type = "slidev"
	TypeSpringBoot   Type = "springboot"
	TypeSvelte       Type = "svelte"
	TypeTypeScript   Type = "typescript"
	TypeVite         Type = "vite"
	TypeVue          Type = "vue"
	TypePostgreSQL   Type = "postgresql"
	TypeMongoDB      Type = "mongodb"
	TypeMySQL        Type = "mysql"
	TypeSQLite       Type = "sqlite"
)

var allTypes = []Type{
	TypeAndroid, TypeAngular, TypeAstro, TypeDjango, TypeDotnet, TypeExpress,
	TypeFastAPI, TypeFlask, TypeFlutter, TypeIOS, TypeKotlin, TypeLightningJS,
	TypeNativeScript, TypeNextJS, TypeNode, TypeNuxt, TypePython, TypeQwik,
	TypeReact, TypeReactNative, TypeRemix, TypeRemotion, TypeSlidev,
	TypeSpringBoot, TypeSvelte, TypeTypeScript, TypeVite, TypeVue,
	TypePostgreSQL, TypeMongoDB, TypeMySQL, TypeSQLite,
}

// Types returns every supported project type in declaration order.
func Types() []Type {
	return slices.Clone(allTypes)
}

// ParseType resolves a case-insensitive type name.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(allTypes, t) {
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedType, s)
}

// String implements fmt.Stringer.
func (t Type) String() string { return string(t) }

// IsDatabase reports whether t scaffolds a database rather than an application.
func (t Type) IsDatabase() bool {
	_, ok := databaseDefaults[t]
	return ok
}
