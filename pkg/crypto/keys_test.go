// pkg/crypto/keys_test.go
package crypto

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RFC 8032 section 7.1, TEST 1.
const (
	rfcSeedHex      = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"
	rfcPublicHex    = "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a"
	rfcSignatureHex = "e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e065224901555fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestGenerateKeyPair(t *testing.T) {
	tests := []struct {
		name    string
		random  io.Reader
		wantErr bool
	}{
		{
			name:    "Successful key generation",
			random:  nil,
			wantErr: false,
		},
		{
			name:    "Failing random source",
			random:  failingReader{},
			wantErr: true,
		},
		{
			name:    "Short random source",
			random:  bytes.NewReader(make([]byte, PrivateKeySize-1)),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				kp  *KeyPair
				err error
			)
			if tt.random == nil {
				kp, err = GenerateKeyPair()
			} else {
				kp, err = GenerateKeyPairFrom(tt.random)
			}

			if (err != nil) != tt.wantErr {
				t.Errorf("GenerateKeyPair() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrGenerate)
				assert.Nil(t, kp, "no partial handle on failure")
				return
			}
			if kp == nil {
				t.Error("Expected KeyPair, got nil")
				return
			}
			defer kp.Release()

			pub := make([]byte, PublicKeySize)
			priv := make([]byte, PrivateKeySize)
			require.NoError(t, kp.ExportKeys(pub, priv))
			assert.NotEqual(t, make([]byte, PublicKeySize), pub, "Public key is empty")
			assert.NotEqual(t, make([]byte, PrivateKeySize), priv, "Private key is empty")
		})
	}
}

type panickingReader struct{}

func (panickingReader) Read([]byte) (int, error) { panic("provider misconfigured") }

func TestGenerateKeyPairFromPanickingReader(t *testing.T) {
	kp, err := GenerateKeyPairFrom(panickingReader{})
	require.ErrorIs(t, err, ErrGenerate)
	require.Contains(t, err.Error(), "provider misconfigured")
	require.Nil(t, kp)
}

func TestGenerateKeyPairFromNilReader(t *testing.T) {
	kp, err := GenerateKeyPairFrom(nil)
	require.ErrorIs(t, err, ErrGenerate)
	require.Nil(t, kp)
}

func TestGenerateKeyPairDeterministicSource(t *testing.T) {
	kp, err := GenerateKeyPairFrom(bytes.NewReader(mustHex(t, rfcSeedHex)))
	require.NoError(t, err)
	defer kp.Release()

	pub, err := kp.PublicKey()
	require.NoError(t, err)
	assert.Equal(t, rfcPublicHex, hex.EncodeToString(pub))
}

func TestGenerateKeyPairUniqueness(t *testing.T) {
	const samples = 256

	seen := make(map[string]struct{}, samples)
	for i := 0; i < samples; i++ {
		kp, err := GenerateKeyPair()
		require.NoError(t, err)

		pub, err := kp.PublicKey()
		require.NoError(t, err)
		kp.Release()

		_, dup := seen[string(pub)]
		require.False(t, dup, "duplicate public key after %d generations", i)
		seen[string(pub)] = struct{}{}
	}
}

func TestExportKeysStable(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)
	defer kp.Release()

	pub1 := make([]byte, PublicKeySize)
	priv1 := make([]byte, PrivateKeySize)
	require.NoError(t, kp.ExportKeys(pub1, priv1))

	pub2 := make([]byte, PublicKeySize)
	priv2 := make([]byte, PrivateKeySize)
	require.NoError(t, kp.ExportKeys(pub2, priv2))

	assert.Equal(t, pub1, pub2)
	assert.Equal(t, priv1, priv2)

	derived, err := PublicKeyFromPrivate(priv1)
	require.NoError(t, err)
	assert.Equal(t, pub1, derived, "exported seed must reproduce the exported public key")
}

func TestExportKeysFailuresLeaveBuffersUntouched(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	sentinel := func(n int) []byte { return bytes.Repeat([]byte{0xAA}, n) }

	pub := sentinel(PublicKeySize)
	priv := sentinel(PrivateKeySize - 1)
	assert.ErrorIs(t, kp.ExportKeys(pub, priv), ErrShortBuffer)
	assert.Equal(t, sentinel(PublicKeySize), pub)
	assert.Equal(t, sentinel(PrivateKeySize-1), priv)

	kp.Release()

	pub = sentinel(PublicKeySize)
	priv = sentinel(PrivateKeySize)
	assert.ErrorIs(t, kp.ExportKeys(pub, priv), ErrInvalidHandle)
	assert.Equal(t, sentinel(PublicKeySize), pub)
	assert.Equal(t, sentinel(PrivateKeySize), priv)

	var nilPair *KeyPair
	assert.ErrorIs(t, nilPair.ExportKeys(pub, priv), ErrInvalidHandle)
	assert.Equal(t, sentinel(PublicKeySize), pub)
}

func TestKeyPairSignVerify(t *testing.T) {
	message := []byte("test message")

	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("Failed to generate key pair: %v", err)
	}
	defer kp.Release()

	signature, err := kp.Sign(message)
	if err != nil {
		t.Fatalf("Failed to sign message: %v", err)
	}
	if len(signature) != SignatureSize {
		t.Fatalf("Expected %d byte signature, got %d", SignatureSize, len(signature))
	}

	pub, err := kp.PublicKey()
	require.NoError(t, err)

	verdict, err := Verify(pub, message, signature)
	require.NoError(t, err)
	if verdict != VerdictValid {
		t.Errorf("Failed to verify valid signature: %v", verdict)
	}

	// Test invalid signature
	invalidMessage := []byte("different message")
	verdict, err = Verify(pub, invalidMessage, signature)
	require.NoError(t, err)
	if verdict != VerdictInvalid {
		t.Errorf("Verified invalid signature: %v", verdict)
	}
}

func TestSignHelloExample(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)
	defer kp.Release()

	pub := make([]byte, PublicKeySize)
	priv := make([]byte, PrivateKeySize)
	require.NoError(t, kp.ExportKeys(pub, priv))
	require.Len(t, pub, 32)
	require.Len(t, priv, 32)

	sig, err := kp.Sign([]byte("hello"))
	require.NoError(t, err)
	require.Len(t, sig, 64)

	verdict, err := Verify(pub, []byte("hello"), sig)
	require.NoError(t, err)
	assert.Equal(t, VerdictValid, verdict)

	verdict, err = Verify(pub, []byte("hellp"), sig)
	require.NoError(t, err)
	assert.Equal(t, VerdictInvalid, verdict)
}

func TestSignDeterministic(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)
	defer kp.Release()

	for _, msg := range [][]byte{nil, {}, []byte("a"), bytes.Repeat([]byte{0x5c}, 4096)} {
		first, err := kp.Sign(msg)
		require.NoError(t, err)
		second, err := kp.Sign(msg)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestSignRFC8032Vector(t *testing.T) {
	kp, err := NewKeyPairFromPrivateKey(mustHex(t, rfcSeedHex))
	require.NoError(t, err)
	defer kp.Release()

	sig, err := kp.Sign(nil)
	require.NoError(t, err)
	assert.Equal(t, rfcSignatureHex, hex.EncodeToString(sig))

	verdict, err := Verify(mustHex(t, rfcPublicHex), []byte{}, sig)
	require.NoError(t, err)
	assert.Equal(t, VerdictValid, verdict)
}

func TestSignIntoShortBuffer(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)
	defer kp.Release()

	out := make([]byte, SignatureSize-1)
	assert.ErrorIs(t, kp.SignInto([]byte("msg"), out), ErrShortBuffer)
	assert.Equal(t, make([]byte, SignatureSize-1), out)

	out = make([]byte, SignatureSize+8)
	require.NoError(t, kp.SignInto([]byte("msg"), out))
	assert.Equal(t, make([]byte, 8), out[SignatureSize:], "bytes past the signature are not written")
}

func TestReleasedAndNilHandles(t *testing.T) {
	var nilPair *KeyPair
	assert.NotPanics(t, nilPair.Release)
	assert.NoError(t, nilPair.Close())
	assert.True(t, nilPair.Released())
	assert.Empty(t, nilPair.Fingerprint())

	_, err := nilPair.Sign([]byte("msg"))
	assert.ErrorIs(t, err, ErrInvalidHandle)
	_, err = nilPair.PublicKey()
	assert.ErrorIs(t, err, ErrInvalidHandle)

	kp, err := GenerateKeyPair()
	require.NoError(t, err)
	assert.False(t, kp.Released())
	assert.Len(t, kp.Fingerprint(), 20)

	kp.Release()
	assert.NotPanics(t, kp.Release, "double release is a no-op")
	assert.True(t, kp.Released())

	_, err = kp.Sign([]byte("msg"))
	assert.ErrorIs(t, err, ErrInvalidHandle)
	_, err = kp.PublicKey()
	assert.ErrorIs(t, err, ErrInvalidHandle)
}

func TestReleaseWipesPrivateKey(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	private := kp.private
	kp.Release()

	assert.Equal(t, make([]byte, len(private)), []byte(private))
}

func TestNewKeyPairFromPrivateKey(t *testing.T) {
	_, err := NewKeyPairFromPrivateKey(make([]byte, 64))
	assert.ErrorIs(t, err, ErrPrivateKeySize)

	_, err = PublicKeyFromPrivate(nil)
	assert.ErrorIs(t, err, ErrPrivateKeySize)

	seed := mustHex(t, rfcSeedHex)
	kp, err := NewKeyPairFromPrivateKey(seed)
	require.NoError(t, err)
	defer kp.Release()

	Wipe(seed)

	priv := make([]byte, PrivateKeySize)
	pub := make([]byte, PublicKeySize)
	require.NoError(t, kp.ExportKeys(pub, priv))
	assert.Equal(t, rfcSeedHex, hex.EncodeToString(priv), "handle keeps its own copy of the seed")
	assert.Equal(t, rfcPublicHex, hex.EncodeToString(pub))
}

func TestDistinctHandlesConcurrently(t *testing.T) {
	const workers = 8

	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			kp, err := GenerateKeyPair()
			if err != nil {
				errs <- err
				return
			}
			defer kp.Release()

			pub, err := kp.PublicKey()
			if err != nil {
				errs <- err
				return
			}

			for j := 0; j < 50; j++ {
				msg := []byte{byte(i), byte(j)}
				sig, err := kp.Sign(msg)
				if err != nil {
					errs <- err
					return
				}
				if v, err := Verify(pub, msg, sig); v != VerdictValid {
					errs <- errors.Join(errors.New("round trip failed"), err)
					return
				}
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestReleaseRacingSign(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	pub, err := kp.PublicKey()
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			sig, err := kp.Sign([]byte("race"))
			if err != nil {
				assert.ErrorIs(t, err, ErrInvalidHandle)
				return
			}
			v, _ := Verify(pub, []byte("race"), sig)
			assert.Equal(t, VerdictValid, v)
		}
	}()

	kp.Release()
	wg.Wait()
}
