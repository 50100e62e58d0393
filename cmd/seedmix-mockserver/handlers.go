package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/fogbird/seedmix/libs/chclient"
	"github.com/fogbird/seedmix/libs/erand"
	"github.com/fogbird/seedmix/libs/xorshift"
)

func handleGetChallenge(w http.ResponseWriter, r *http.Request) {
	uid := erand.Token(16)
	seed := erand.Int32()
	for seed == 0 {
		seed = erand.Int32()
	}
	pending.SetDefault(uid, seed)
	incrStat("challenge.issued")
	log.Printf("issued challenge uid=%v seed=%v", uid, seed)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		UID         string `json:"uid"`
		InitialSeed int32  `json:"initialSeed"`
	}{uid, seed})
}

func handlePostChallenge(w http.ResponseWriter, r *http.Request) {
	var sub struct {
		UID       string  `json:"uid"`
		Generated []int32 `json:"generated"`
	}
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		log.Println("bad submission:", err)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintln(w, "malformed JSON body")
		return
	}
	seedi, ok := pending.Get(sub.UID)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintln(w, "unknown or expired uid")
		return
	}
	pending.Delete(sub.UID)
	want := xorshift.Sequence(seedi.(int32), chclient.SequenceLen)
	correct := len(sub.Generated) == len(want)
	if correct {
		for i := range want {
			if sub.Generated[i] != want[i] {
				correct = false
				break
			}
		}
	}
	code := ""
	if correct {
		incrStat("challenge.solved")
		code = codeFor(sub.UID)
		pending.SetDefault("verify/"+code, true)
	} else {
		incrStat("challenge.failed")
		log.Printf("wrong sequence for uid=%v", sub.UID)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Correct          bool   `json:"correct"`
		VerificationCode string `json:"verificationCode,omitempty"`
	}{correct, code})
}

// codeFor derives a stable verification code for a solved uid, so a rerun
// against the same uid produces the same code.
func codeFor(uid string) string {
	sum := sha256.Sum256([]byte("seedmix-verification/" + uid))
	return hex.EncodeToString(sum[:8])
}

func handleGetVerify(w http.ResponseWriter, r *http.Request) {
	code := erand.Token(8)
	pending.SetDefault("verify/"+code, true)
	incrStat("verify.issued")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		VerificationCode string `json:"verificationCode"`
	}{code})
}

func handlePostVerify(w http.ResponseWriter, r *http.Request) {
	var v struct {
		VerificationCode string `json:"verificationCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		log.Println("bad verification:", err)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintln(w, "malformed JSON body")
		return
	}
	if _, ok := pending.Get("verify/" + v.VerificationCode); !ok {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintln(w, "unknown verification code")
		return
	}
	incrStat("verify.accepted")
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "verified %v\n", v.VerificationCode)
}
