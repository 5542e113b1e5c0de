package pipeline

import "testing"

func TestResolveDownload(t *testing.T) {
	tc := []struct {
		name        string
		explicitURL string
		filePath    string
		want        string
		wantOK      bool
	}{
		{
			name:        "explicit URL wins verbatim",
			explicitURL: "https://backend.example/files/out.srt",
			filePath:    "temp/abc123/out.srt",
			want:        "https://backend.example/files/out.srt",
			wantOK:      true,
		},
		{
			name:     "path derived link",
			filePath: "temp/abc123/out.srt",
			want:     "/download/abc123/out.srt",
			wantOK:   true,
		},
		{
			name:     "backslashes normalized",
			filePath: `temp\abc123\out.srt`,
			want:     "/download/abc123/out.srt",
			wantOK:   true,
		},
		{
			name:     "segments percent encoded",
			filePath: "temp/ab c/My Video?.srt",
			want:     "/download/ab%20c/My%20Video%3F.srt",
			wantOK:   true,
		},
		{
			name:     "filename with extra segments keeps structure",
			filePath: "temp/abc123/nested/out.srt",
			want:     "/download/abc123/nested/out.srt",
			wantOK:   true,
		},
		{
			name:     "too few segments",
			filePath: "out.srt",
			wantOK:   false,
		},
		{
			name:     "root and filename only",
			filePath: "temp/out.srt",
			wantOK:   false,
		},
		{
			name:     "empty path",
			filePath: "",
			wantOK:   false,
		},
		{
			name:     "empty segment",
			filePath: "temp//out.srt",
			wantOK:   false,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveDownload(tt.explicitURL, tt.filePath)
			if ok != tt.wantOK {
				t.Fatalf("ResolveDownload() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ResolveDownload() = %q, want %q", got, tt.want)
			}
		})
	}
}
