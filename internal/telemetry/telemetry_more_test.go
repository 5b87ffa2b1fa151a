/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package telemetry

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// Opt-out is the default; a disabled client must stay silent no matter what
// the app reports through it.
func TestClient_OptOutSendsNothing(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(Config{OptIn: false, EventsURL: srv.URL + "/events", CrashURL: srv.URL + "/crash", Timeout: time.Second})
	defer c.Close()
	if c.Enabled() {
		t.Fatalf("opted-out client reports enabled")
	}

	c.Event("sequence_selected", map[string]any{"sequence": "burmese"})
	c.Event("custom_media_saved", map[string]any{"glyph": "A", "kind": "audio"})
	c.Event("trace_exported", nil)
	c.UploadCrash([]byte("goroutine 1 [running]"))
	c.Flush(nil)
	time.Sleep(50 * time.Millisecond)

	if n := atomic.LoadInt32(&hits); n != 0 {
		t.Fatalf("disabled client made %d requests", n)
	}
}

func TestClient_EmptyEventNameDropped(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(Config{OptIn: true, EventsURL: srv.URL + "/events", Timeout: time.Second})
	defer c.Close()

	c.Event("", map[string]any{"sequence": "english"})
	c.Flush(nil)
	time.Sleep(50 * time.Millisecond)

	if n := atomic.LoadInt32(&hits); n != 0 {
		t.Fatalf("nameless event reached the collector (%d requests)", n)
	}
}
