package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnv_HostedCommands(t *testing.T) {
	var alerts []string
	closes := 0

	bridge := NewEnv(EnvConfig{
		InitData:  "signed-payload",
		LaunchURL: "https://cards.example.com/app",
		OnAlert:   func(msg string) { alerts = append(alerts, msg) },
		OnClose:   func() { closes++ },
	})

	assert.True(t, bridge.Available())
	assert.Equal(t, "signed-payload", bridge.InitData())

	bridge.Ready()
	bridge.Expand()
	bridge.ShowAlert("hola")
	bridge.Close()

	assert.Equal(t, []string{"hola"}, alerts)
	assert.Equal(t, 1, closes)
}

func TestEnv_UnhostedCommandsAreNoops(t *testing.T) {
	closes := 0

	// Без initData и без явного Hosted хост считается отсутствующим
	bridge := NewEnv(EnvConfig{
		LaunchURL: "http://localhost:5173/app",
		OnClose:   func() { closes++ },
	})

	assert.False(t, bridge.Available())

	// Команды не должны ни паниковать, ни доходить до callbacks
	bridge.Ready()
	bridge.Expand()
	bridge.ShowAlert("dropped")
	bridge.Close()

	assert.Zero(t, closes)
}

func TestEnv_HostedWithoutInitData(t *testing.T) {
	// Контейнер может быть подключен до того, как отдал initData
	bridge := NewEnv(EnvConfig{
		Hosted:    true,
		LaunchURL: "https://cards.example.com/app",
	})

	assert.True(t, bridge.Available())
	assert.Empty(t, bridge.InitData())
}

func TestEnv_LocalDevelopment(t *testing.T) {
	local := NewEnv(EnvConfig{LaunchURL: "http://127.0.0.1:5173/app"})
	remote := NewEnv(EnvConfig{InitData: "x", LaunchURL: "https://cards.example.com/app"})

	assert.True(t, local.LocalDevelopment())
	assert.False(t, remote.LocalDevelopment())
}

func TestEnv_ReplaceLaunchURL(t *testing.T) {
	bridge := NewEnv(EnvConfig{
		InitData:  "x",
		LaunchURL: "https://cards.example.com/app?access_token=otp",
	})

	bridge.ReplaceLaunchURL(StripCredentials(bridge.LaunchURL()))

	assert.Equal(t, "https://cards.example.com/app", bridge.LaunchURL())
}

func TestNoop(t *testing.T) {
	var bridge Bridge = Noop{}

	assert.False(t, bridge.Available())
	assert.False(t, bridge.LocalDevelopment())
	assert.Empty(t, bridge.InitData())
	assert.Empty(t, bridge.LaunchURL())

	// Все команды безопасны
	bridge.Ready()
	bridge.Expand()
	bridge.ShowAlert("ignored")
	bridge.Close()
	bridge.ReplaceLaunchURL("x")
}
