package tcp

import "testing"

func TestServerLifecycleErrors(t *testing.T) {
	if _, err := NewServer(""); err != ErrEmptyAddr {
		t.Fatalf("empty addr: got %v want ErrEmptyAddr", err)
	}

	srv, err := NewServer("127.0.0.1:0")
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if _, err := srv.Accept(); err != ErrNotListening {
		t.Fatalf("accept before listen: got %v want ErrNotListening", err)
	}

	if err := srv.Listen(); err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer srv.Close()

	if err := srv.Listen(); err != ErrAlreadyListening {
		t.Fatalf("double listen: got %v want ErrAlreadyListening", err)
	}

	var nilServer *Server
	if err := nilServer.Listen(); err != ErrNilServer {
		t.Fatalf("nil receiver: got %v want ErrNilServer", err)
	}
}

func TestClientRequiresAddr(t *testing.T) {
	if _, err := NewClient("", 0); err != ErrEmptyAddr {
		t.Fatalf("empty addr: got %v want ErrEmptyAddr", err)
	}

	var nilClient *Client
	if _, err := nilClient.Dial(); err != ErrNilClient {
		t.Fatalf("nil receiver: got %v want ErrNilClient", err)
	}
}
