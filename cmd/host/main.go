// Command host shares this machine's primary display with one client at
// a time and replays the client's pointer and keyboard input locally.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/avaropoint/screenlink/internal/capture"
	"github.com/avaropoint/screenlink/internal/host"
	"github.com/avaropoint/screenlink/internal/inject"
	"github.com/avaropoint/screenlink/internal/netutil"
	"github.com/avaropoint/screenlink/internal/protocol"
	"github.com/avaropoint/screenlink/internal/version"
)

func main() {
	bind := flag.String("bind", "", "Address to listen on (defaults to all interfaces)")
	port := flag.Int("port", protocol.DefaultPort, "TCP port to listen on")
	noQR := flag.Bool("no-qr", false, "Suppress the QR code in the connection banner")
	flag.Parse()

	log.Printf("Host v%s (built %s)", version.Version, version.BuildTime)
	log.Printf("OS: %s, Arch: %s", runtime.GOOS, runtime.GOARCH)

	printBanner(*port, *noQR)

	addr := fmt.Sprintf("%s:%d", *bind, *port)
	sup := host.NewSupervisor(addr, capture.Primary, inject.NewRobot(), func(status string) {
		log.Println(status)
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutting down...")
		sup.Stop()
	}()

	if err := sup.Run(); err != nil {
		log.Fatalf("Host error: %v", err)
	}
}

// printBanner shows how a client can reach this host: the local IP, the
// port, and a scannable QR code of the endpoint.
func printBanner(port int, noQR bool) {
	endpoint := fmt.Sprintf("%s:%d", netutil.LocalIP(), port)
	log.Printf("Your local endpoint: %s", endpoint)

	if noQR {
		return
	}
	qr, err := qrcode.New(endpoint, qrcode.Low)
	if err != nil {
		log.Printf("QR code unavailable: %v", err)
		return
	}
	fmt.Print(qr.ToSmallString(false))
	fmt.Println("Scan the QR code or use the endpoint above to connect.")
}
