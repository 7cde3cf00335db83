package core

// PlaybackState represents the current playback state.
type PlaybackState struct {
	Track     *Track  `json:"track"`
	IsPlaying bool    `json:"is_playing"`
	Playlist  []Track `json:"playlist"`
	Cursor    int     `json:"cursor"`
}

// HasTrack returns true if there is an active track.
func (s *PlaybackState) HasTrack() bool {
	return s != nil && s.Track != nil
}

// PlaylistLen returns the number of tracks in the playlist.
func (s *PlaybackState) PlaylistLen() int {
	if s == nil {
		return 0
	}
	return len(s.Playlist)
}

// Current returns the track under the cursor, or nil if the playlist is empty.
func (s *PlaybackState) Current() *Track {
	if s == nil || len(s.Playlist) == 0 || s.Cursor < 0 || s.Cursor >= len(s.Playlist) {
		return nil
	}
	return &s.Playlist[s.Cursor]
}

// Upcoming returns tracks after the cursor position.
func (s *PlaybackState) Upcoming() []Track {
	if s == nil || len(s.Playlist) == 0 || s.Cursor < 0 || s.Cursor >= len(s.Playlist)-1 {
		return nil
	}
	return s.Playlist[s.Cursor+1:]
}
