package config

import (
	"log/slog"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dgallion1/docrank/internal/relevance"
)

// LoadProfile returns the built-in ranking profile overlaid with the YAML
// file at path. An empty path yields the defaults.
//
// Scalar sections (weights, tfidf) are merged key by key. List sections
// (action_words, personas, rules) replace the defaults; extra_personas and
// extra_rules append to them; disable_rules switches rules off by name.
func LoadProfile(path string, log *slog.Logger) (relevance.Profile, error) {
	p := relevance.DefaultProfile()
	if path == "" {
		return p, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return p, wrapInvalid("profile", err)
	}

	conf := koanf.UnmarshalConf{Tag: "koanf"}
	if err := k.UnmarshalWithConf("weights", &p.Weights, conf); err != nil {
		return p, wrapInvalid("profile.weights", err)
	}
	if err := k.UnmarshalWithConf("tfidf", &p.TFIDF, conf); err != nil {
		return p, wrapInvalid("profile.tfidf", err)
	}
	if k.Exists("action_words") {
		p.ActionWords = k.Strings("action_words")
	}

	if k.Exists("personas") {
		var personas []relevance.Persona
		if err := k.UnmarshalWithConf("personas", &personas, conf); err != nil {
			return p, wrapInvalid("profile.personas", err)
		}
		p.Personas = personas
	}
	if k.Exists("extra_personas") {
		var extra []relevance.Persona
		if err := k.UnmarshalWithConf("extra_personas", &extra, conf); err != nil {
			return p, wrapInvalid("profile.extra_personas", err)
		}
		p.Personas = append(p.Personas, extra...)
	}

	if k.Exists("rules") {
		var rules []relevance.Rule
		if err := k.UnmarshalWithConf("rules", &rules, conf); err != nil {
			return p, wrapInvalid("profile.rules", err)
		}
		p.Rules = rules
	}
	if k.Exists("extra_rules") {
		var extra []relevance.Rule
		if err := k.UnmarshalWithConf("extra_rules", &extra, conf); err != nil {
			return p, wrapInvalid("profile.extra_rules", err)
		}
		p.Rules = append(p.Rules, extra...)
	}
	if k.Exists("disable_rules") {
		if unknown := p.DisableRules(k.Strings("disable_rules")...); len(unknown) > 0 {
			log.Warn("profile disables unknown rules", "path", path, "rules", unknown)
		}
	}

	if err := p.Validate(); err != nil {
		return p, wrapInvalid("profile", err)
	}

	log.Info("ranking profile loaded",
		"path", path,
		"tfidf_weight", p.Weights.TFIDF,
		"keyword_weight", p.Weights.Keyword,
		"personas", len(p.Personas),
		"rules", len(p.Rules),
	)
	return p, nil
}
