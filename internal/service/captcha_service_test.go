package service

import (
	"testing"

	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptchaSceneDisabledPassesThrough(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{RefundRequest: false})
	assert.False(t, svc.SceneEnabled(constants.CaptchaSceneRefundRequest))
	assert.NoError(t, svc.Verify(constants.CaptchaSceneRefundRequest, CaptchaVerifyPayload{}))
}

func TestCaptchaVerifyRequiresAndChecksCode(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{RefundRequest: true})
	assert.ErrorIs(t, svc.Verify(constants.CaptchaSceneRefundRequest, CaptchaVerifyPayload{}), ErrCaptchaRequired)

	challenge, err := svc.GenerateImageChallenge()
	require.NoError(t, err)
	require.NotEmpty(t, challenge.CaptchaID)
	assert.NotEmpty(t, challenge.ImageBase64)

	answer := svc.imageStore().Get(challenge.CaptchaID, false)
	require.NotEmpty(t, answer)

	err = svc.Verify(constants.CaptchaSceneRefundRequest, CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID, CaptchaCode: "wrong"})
	assert.ErrorIs(t, err, ErrCaptchaInvalid)

	challenge, err = svc.GenerateImageChallenge()
	require.NoError(t, err)
	answer = svc.imageStore().Get(challenge.CaptchaID, false)
	assert.NoError(t, svc.Verify(constants.CaptchaSceneRefundRequest, CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID, CaptchaCode: answer}))
}

func TestNormalizeCaptchaConfigDefaults(t *testing.T) {
	cfg := normalizeCaptchaConfig(config.CaptchaConfig{})
	assert.Equal(t, 5, cfg.Image.Length)
	assert.Equal(t, 240, cfg.Image.Width)
	assert.Equal(t, 300, cfg.Image.ExpireSeconds)
}
