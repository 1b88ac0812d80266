package conversation

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// IncomingFile is one file handed over by the upload surface.
type IncomingFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Intake turns a batch of files into data-URI assets. Each file is
// encoded on its own goroutine; Append is invoked per finished asset
// and Settled exactly once after the whole batch is done. Both
// callbacks are the caller's chance to take the session lock and check
// the current stage before acting, since the user may have advanced
// past the assets stage while a batch was in flight.
type Intake struct {
	Append  func(Asset)
	Settled func(accepted int)
}

// Accept encodes the batch asynchronously and returns immediately.
// Asset ids are the batch timestamp plus the file's index, so two files
// in one batch can never collide.
func (in *Intake) Accept(files []IncomingFile) {
	if in == nil || len(files) == 0 {
		if in != nil && in.Settled != nil {
			in.Settled(0)
		}
		return
	}
	base := time.Now().UnixMilli()
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i, f := range files {
		wg.Add(1)
		go func(idx int, f IncomingFile) {
			defer wg.Done()
			asset, ok := encodeAsset(base, idx, f)
			if !ok {
				return
			}
			mu.Lock()
			accepted++
			mu.Unlock()
			if in.Append != nil {
				in.Append(asset)
			}
		}(i, f)
	}
	go func() {
		wg.Wait()
		if in.Settled != nil {
			mu.Lock()
			n := accepted
			mu.Unlock()
			in.Settled(n)
		}
	}()
}

func encodeAsset(base int64, idx int, f IncomingFile) (Asset, bool) {
	if len(f.Data) == 0 {
		return Asset{}, false
	}
	ct := strings.TrimSpace(f.ContentType)
	if ct == "" {
		ct = http.DetectContentType(f.Data)
	}
	return Asset{
		ID:   fmt.Sprintf("%d", base+int64(idx)),
		Name: f.Name,
		Data: "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(f.Data),
	}, true
}
