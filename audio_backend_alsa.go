//go:build !headless

// audio_backend_alsa.go - ALSA DAC backend (cgo)

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionKeys
License: GPLv3 or later
*/

package main

/*
#cgo LDFLAGS: -lasound
#include <alsa/asoundlib.h>
#include <stdlib.h>

static snd_pcm_t* openPCM(const char* device, int* err) {
    snd_pcm_t* handle;
    *err = snd_pcm_open(&handle, device, SND_PCM_STREAM_PLAYBACK, 0);
    return handle;
}

static int setupPCM(snd_pcm_t* handle, unsigned int rate) {
    snd_pcm_hw_params_t* params;
    int err;

    snd_pcm_hw_params_alloca(&params);
    err = snd_pcm_hw_params_any(handle, params);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_access(handle, params, SND_PCM_ACCESS_RW_INTERLEAVED);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_format(handle, params, SND_PCM_FORMAT_FLOAT);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_channels(handle, params, 1);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_rate(handle, params, rate, 0);
    if (err < 0) return err;

    err = snd_pcm_hw_params(handle, params);
    if (err < 0) return err;

    return snd_pcm_prepare(handle);
}

static int writePCM(snd_pcm_t* handle, float* buffer, int frames) {
    return snd_pcm_writei(handle, buffer, frames);
}

static void closePCM(snd_pcm_t* handle) {
    if (handle != NULL) {
        snd_pcm_drain(handle);
        snd_pcm_close(handle);
    }
}
*/
import "C"
import (
	"fmt"
	"sync"
	"unsafe"
)

// ALSAPlayer is the push-mode alternative to the oto backend: a pump
// goroutine drains the engine one buffer's worth at a time and writes it
// to the PCM device, so the engine consumer still ticks at 22 kHz.
type ALSAPlayer struct {
	handle  *C.snd_pcm_t
	engine  *SynthEngine
	started bool
	mutex   sync.Mutex
	done    chan struct{}
	samples []float32
}

func NewALSAPlayer(engine *SynthEngine) (*ALSAPlayer, error) {
	var cerr C.int
	cdev := C.CString("default")
	defer C.free(unsafe.Pointer(cdev))
	handle := C.openPCM(cdev, &cerr)
	if cerr < 0 {
		return nil, fmt.Errorf("failed to open PCM device: %s", C.GoString(C.snd_strerror(cerr)))
	}

	if cerr = C.setupPCM(handle, C.uint(SAMPLE_RATE)); cerr < 0 {
		C.closePCM(handle)
		return nil, fmt.Errorf("failed to setup PCM: %s", C.GoString(C.snd_strerror(cerr)))
	}

	return &ALSAPlayer{
		handle:  handle,
		engine:  engine,
		samples: make([]float32, AUDIO_BUF_SIZE),
	}, nil
}

func (ap *ALSAPlayer) pump(done chan struct{}) {
	for {
		select {
		case <-done:
			return
		default:
		}

		for i := range ap.samples {
			ap.samples[i] = (float32(ap.engine.ReadSample()) - 128) / 128
		}

		ap.mutex.Lock()
		handle := ap.handle
		if handle == nil {
			ap.mutex.Unlock()
			return
		}
		frames := C.writePCM(handle, (*C.float)(unsafe.Pointer(&ap.samples[0])), C.int(len(ap.samples)))
		if frames == -C.EPIPE {
			C.snd_pcm_prepare(handle)
			C.writePCM(handle, (*C.float)(unsafe.Pointer(&ap.samples[0])), C.int(len(ap.samples)))
		}
		ap.mutex.Unlock()
	}
}

func (ap *ALSAPlayer) Start() {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	if !ap.started {
		ap.started = true
		ap.done = make(chan struct{})
		go ap.pump(ap.done)
	}
}

func (ap *ALSAPlayer) Stop() {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	if ap.started {
		ap.started = false
		close(ap.done)
	}
}

func (ap *ALSAPlayer) Close() {
	ap.Stop()
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	if ap.handle != nil {
		C.closePCM(ap.handle)
		ap.handle = nil
	}
}

func (ap *ALSAPlayer) IsStarted() bool {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()
	return ap.started
}
