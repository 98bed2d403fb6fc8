package led

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func TestGPIO_ActiveHigh(t *testing.T) {
	pin := &gpiotest.Pin{N: "GPIO13", Num: 13, L: gpio.High}
	g := newGPIOFromPin(pin, ActiveHigh)

	require.NoError(t, g.Init())
	assert.Equal(t, gpio.Low, pin.Read(), "init should leave the led off")

	require.NoError(t, g.TurnOn())
	assert.Equal(t, gpio.High, pin.Read())
	on, err := g.GetState()
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, g.TurnOff())
	assert.Equal(t, gpio.Low, pin.Read())
	assert.Equal(t, "GPIO13", g.String())
}

func TestGPIO_ActiveLow(t *testing.T) {
	pin := &gpiotest.Pin{N: "GPIO18", Num: 18}
	g := newGPIOFromPin(pin, ActiveLow)

	require.NoError(t, g.Init())
	assert.Equal(t, gpio.High, pin.Read())

	require.NoError(t, g.TurnOn())
	assert.Equal(t, gpio.Low, pin.Read())
	on, err := g.GetState()
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, g.TurnOn())
	require.NoError(t, g.Close())
	assert.Equal(t, gpio.High, pin.Read(), "close should leave the led off")
}
