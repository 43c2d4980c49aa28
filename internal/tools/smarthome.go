package tools

import (
	"context"
	"net/http"
	"strings"
)

// SmartHomeResult reports whether the command was issued. Handled=false
// asks the user to operate the device manually; it is an expected
// outcome, not a failure.
type SmartHomeResult struct {
	Handled bool   `json:"handled"`
	Entity  string `json:"entity,omitempty"`
	Message string `json:"message"`
}

// French device keywords mapped to entity identifiers, checked by
// substring against the lowercased device phrase.
var deviceEntities = []struct {
	keyword string
	entity  string
}{
	{"lumière", "light.salon"},
	{"lampe", "light.salon"},
	{"télé", "media_player.tv"},
	{"tv", "media_player.tv"},
	{"climatiseur", "climate.salon"},
	{"ventilateur", "fan.salon"},
}

func (r *Registry) smartHomeController(ctx context.Context, p Params) (interface{}, error) {
	device := p.String("device")
	action := p.StringOr("action", "turn_on")

	manual := SmartHomeResult{
		Handled: false,
		Message: "Je ne peux pas commander " + deviceLabel(device) + ". Veuillez le faire manuellement.",
	}

	sh := r.store.SmartHome(ctx)
	if !sh.Configured() {
		return manual, nil
	}
	if action != "turn_on" && action != "turn_off" {
		return manual, nil
	}

	entity := resolveEntity(device)
	domain := strings.SplitN(entity, ".", 2)[0]

	resp, err := r.http.R().
		SetContext(ctx).
		SetAuthToken(sh.Token).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"entity_id": entity}).
		Post(strings.TrimSuffix(sh.URL, "/") + "/api/services/" + domain + "/" + action)
	if err != nil || resp.StatusCode() >= http.StatusBadRequest {
		r.log.Warn().Err(err).Str("entity", entity).Msg("smart-home command failed")
		return manual, nil
	}

	verb := "allumé"
	if action == "turn_off" {
		verb = "éteint"
	}
	return SmartHomeResult{
		Handled: true,
		Entity:  entity,
		Message: "C'est fait, j'ai " + verb + " " + deviceLabel(device) + ".",
	}, nil
}

func resolveEntity(device string) string {
	d := strings.ToLower(device)
	for _, de := range deviceEntities {
		if strings.Contains(d, de.keyword) {
			return de.entity
		}
	}
	// Unknown devices get a generic switch entity from the raw name.
	slug := strings.ReplaceAll(strings.TrimSpace(d), " ", "_")
	if slug == "" {
		slug = "appareil"
	}
	return "switch." + slug
}

func deviceLabel(device string) string {
	if device == "" {
		return "l'appareil"
	}
	return device
}
