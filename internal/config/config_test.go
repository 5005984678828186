package config

import "testing"

func TestFromEnv(t *testing.T) {
	t.Setenv("CLIENT_TOKEN_CARDEAL", "token-1")
	t.Setenv("CLIENT_TOKEN_MINERVA", "token-2")
	t.Setenv("CLIENT_ALIAS_CARDEALEVOCE", "cardeal")
	t.Setenv("TRAIN_CLIENTS", "cardeal, minerva,")
	t.Setenv("MIN_SUPPORT", "0.1")

	cfg := FromEnv()

	if cfg.Tokens["CARDEAL"] != "token-1" || cfg.Tokens["MINERVA"] != "token-2" {
		t.Fatalf("tokens = %v", cfg.Tokens)
	}
	if got := cfg.ResolveClient("cardealevoce"); got != "cardeal" {
		t.Fatalf("ResolveClient(cardealevoce) = %q, want cardeal", got)
	}
	if got := cfg.ResolveClient("minerva"); got != "minerva" {
		t.Fatalf("ResolveClient(minerva) = %q, want passthrough", got)
	}
	if len(cfg.TrainClients) != 2 || cfg.TrainClients[0] != "cardeal" || cfg.TrainClients[1] != "minerva" {
		t.Fatalf("TrainClients = %v", cfg.TrainClients)
	}
	if cfg.MinSupport != 0.1 {
		t.Fatalf("MinSupport = %v, want 0.1", cfg.MinSupport)
	}
	if cfg.MinConfidence != 0.6 || cfg.TopN != 5 || cfg.TrainWorkers != 6 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestTokenFor(t *testing.T) {
	cfg := &Config{Tokens: map[string]string{"ACME": "tok"}}

	if token, ok := cfg.TokenFor("acme"); !ok || token != "tok" {
		t.Fatalf("TokenFor(acme) = %q, %v", token, ok)
	}
	if _, ok := cfg.TokenFor("unknown"); ok {
		t.Fatal("TokenFor(unknown) reported known client")
	}
}
